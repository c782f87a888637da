package service

import "errors"

// Failure kinds returned by the sync service. Callers match them with
// errors.Is; the underlying collaborator error stays in the chain. Nothing
// here is retried automatically — retry policy belongs to callers.
var (
	// ErrNotAuthenticated: an operation was attempted with no active user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingIdentifier: update or delete on an item that was never
	// persisted. A precondition failure, not something to retry.
	ErrMissingIdentifier = errors.New("item has no identifier")

	// ErrRemoteRead: the document store failed to return the collection.
	ErrRemoteRead = errors.New("remote read failed")

	// ErrRemoteWrite: an insert, update, or document delete failed.
	ErrRemoteWrite = errors.New("remote write failed")

	// ErrImageUpload: the blob store rejected an image upload. The item
	// document was not written.
	ErrImageUpload = errors.New("image upload failed")

	// ErrImageDelete: deleting an item's image failed after its document
	// was already deleted. Non-fatal — the item is gone and the cache
	// reflects that; the blob is orphaned.
	ErrImageDelete = errors.New("image delete failed")
)
