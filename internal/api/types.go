// Package api serves the Huffman tree operations over HTTP.
//
// Text travels in JSON strings, which are UTF-8, so the API accepts only
// 7-bit ASCII text and trees whose symbols are all ASCII.  Anything else is
// rejected with 400 Bad Request.
package api

// TreeSelector picks the tree a request is served with.  TreeBits, the bit
// representation of a tree, takes precedence over Tree, the name of a
// reference tree.  If both are empty the standard tree is used.
type TreeSelector struct {
	Tree     string `json:"tree,omitempty"`
	TreeBits string `json:"tree_bits,omitempty"`
}

// BuildRequest is the body of POST /v1/trees.
type BuildRequest struct {
	Text     string `json:"text"`
	FillGaps bool   `json:"fill_gaps"`
}

// TreeResponse describes a tree.  Codes maps each character to its code.
type TreeResponse struct {
	Name   string            `json:"name,omitempty"`
	Bits   string            `json:"bits"`
	Codes  map[string]string `json:"codes"`
	Unique int               `json:"unique,omitempty"`
	Total  uint64            `json:"total,omitempty"`
}

// EncodeRequest is the body of POST /v1/encode.
type EncodeRequest struct {
	TreeSelector
	Text string `json:"text"`
}

// EncodeResponse carries the encoded bits and the number of input bytes that
// had no code.
type EncodeResponse struct {
	Bits     string   `json:"bits"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// DecodeRequest is the body of POST /v1/decode.  Count, if set, stops
// decoding after that many characters; it must not exceed 8 Mi.
type DecodeRequest struct {
	TreeSelector
	Bits  string `json:"bits"`
	Count *int   `json:"count,omitempty"`
}

// DecodeResponse carries the decoded text and any decoding diagnostics.
type DecodeResponse struct {
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
