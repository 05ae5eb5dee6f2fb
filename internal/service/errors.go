package service

import "errors"

var (
	ErrNoParticipants     = errors.New("You have no assigned participants. Please contact administrator to assign")
	ErrForbidden          = errors.New("participant is not assigned to the user")
	ErrInvalidParticipant = errors.New("invalid participant")
	ErrEmptyBatch         = errors.New("no files to upload")
	ErrPathNotAllowed     = errors.New("upload path is not allowed")
	ErrKeyRequired        = errors.New("object key is required")
	ErrNotFound           = errors.New("object not found")
	ErrUnauthenticated    = errors.New("id token verification failed")
)
