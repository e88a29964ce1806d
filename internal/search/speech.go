package search

import (
	apperrors "github.com/paulkamani9/overtune/internal/platform/errors"
)

// Recognizer is the optional speech input capability. When available, it
// yields a final transcript consumed as a search query; when not, callers
// degrade to manual text search only.
type Recognizer interface {
	Supported() bool
	Start(onResult func(transcript string), onError func(error)) error
	Stop()
}

// Unavailable returns the degraded recognizer used when the device offers
// no speech support.
func Unavailable() Recognizer {
	return unavailableRecognizer{}
}

type unavailableRecognizer struct{}

func (unavailableRecognizer) Supported() bool { return false }

func (unavailableRecognizer) Start(func(string), func(error)) error {
	return apperrors.E(apperrors.KindUnavailable, "speech recognition is not supported")
}

func (unavailableRecognizer) Stop() {}
