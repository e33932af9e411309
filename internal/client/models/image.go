package models

import (
	"encoding/base64"
	"net/http"
	"regexp"
)

// ImageFile is a file picked by the user for resizing. Nothing about it is
// validated: any bytes with any MIME type are accepted.
type ImageFile struct {
	Name string
	MIME string
	Data []byte
}

// DataURL encodes the file the way a browser FileReader does:
// "data:<mime>;base64,<payload>". An empty MIME type is sniffed from the data.
func (f *ImageFile) DataURL() string {
	mime := f.MIME
	if mime == "" {
		mime = http.DetectContentType(f.Data)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

var imagePrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,`)

// StripImagePrefix removes a png/jpeg/jpg data-URL prefix. Other prefixes are
// left in place.
func StripImagePrefix(dataURL string) string {
	return imagePrefix.ReplaceAllString(dataURL, "")
}

// ResizeRequest carries what is sent to the resize endpoint. Ratio and Quality
// are the raw text of the form inputs.
type ResizeRequest struct {
	Base64Image string
	Ratio       string
	Quality     string
}
