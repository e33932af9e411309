// Package client talks to the remote text-generation, translation and image
// resize endpoints.
//
// # Overview
//
// Client is the contract the form controller depends on; HTTPClient is the
// JSON-over-HTTP implementation:
//
//	POST /generate      {"input_texts": [prompt]}
//	POST /translate     {"input_texts": [prompt], "src_lang": .., "tgt_lang": ..}
//	POST /resize_image  {"base64_image": .., "ratio": .., "quality": ..}
//
// Responses are validated before use (go-playground/validator); nothing is
// read out of an unchecked document.
//
// # Error Handling
//
// Failures match one of the sentinels with errors.Is: ErrUnavailable (the
// request never got an answer), ErrUnexpectedStatus (non-2xx, see StatusError)
// and ErrMalformedResponse (body did not match the expected schema).
// No call is retried.
package client
