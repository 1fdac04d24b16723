package domain

// Client is a registered buyer. Only the code and name participate in sale
// composition; the name is denormalized onto the sale header at submit time.
type Client struct {
	Code int64  `json:"code"`
	Name string `json:"name"`
}
