package service

// Recorder receives business events for metrics.
type Recorder interface {
	ListingPublished()
	AccountCreated()
	PublishFailed(kind string)
	ListingViewed()
}

type nopRecorder struct{}

func (nopRecorder) ListingPublished()    {}
func (nopRecorder) AccountCreated()      {}
func (nopRecorder) PublishFailed(string) {}
func (nopRecorder) ListingViewed()       {}

func NopRecorder() Recorder {
	return nopRecorder{}
}
