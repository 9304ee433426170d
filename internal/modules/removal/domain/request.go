package domain

// FormField is the multipart field the API reads the image from.
const FormField = "image_file"

// DefaultContentType is used when the extension is unknown or missing.
const DefaultContentType = "application/octet-stream"

// Request is a single upload to the background removal API.
type Request struct {
	SourcePath  string
	FileName    string
	ContentType string
	Data        []byte
}

// Response is the raw answer from the API.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the API produced an image.
func (r *Response) OK() bool {
	return r.StatusCode == 200
}

// Result describes what one invocation produced.
type Result struct {
	Location    string
	Bytes       int64
	ContentType string
	Cached      bool
	Preview     string
}
