package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session id is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSubmissionInFlight is returned when a submission arrives while
	// the session's previous chat call is still outstanding. Submissions
	// are serialized per session; the caller retries after the reply.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrPermissionDenied signals the user denied a device permission
	// (microphone or location). It is surfaced distinctly so the caller
	// can show a targeted message instead of a generic error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAlreadyRecording is returned when a capture session is started
	// while another is active. Recordings are never layered.
	ErrAlreadyRecording = errors.New("already recording")

	// ErrUnsupportedEncoding is returned when the capture device supports
	// none of the preferred encodings.
	ErrUnsupportedEncoding = errors.New("no supported audio encoding")
)
