package request

// CreateAccountRequest is the body of POST /account.
type CreateAccountRequest struct {
	Name string `json:"name"`
}
