package errors

import (
	"encoding/json"
	"net/http"
)

const (
	InvalidRequestFormatError = "Invalid request format"
	InvalidListingIDError     = "Invalid listing ID"
	UnauthorizedError         = "You are not logged in"
	ForbiddenError            = "Forbidden"
	MissingUserIDError        = "userId is required"
	MissingEmailClaimError    = "Email could not be resolved from token"
	ImageStorageError         = "Image storage not available"
	ImageNotFoundError        = "Image not found"
	InternalServerError       = "Internal server error"
)

// ReturnJSONError writes a JSON body with a message field; every failure
// response in the API goes through here.
func ReturnJSONError(rw http.ResponseWriter, message string, statusCode int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	_ = json.NewEncoder(rw).Encode(map[string]string{"message": message})
}
