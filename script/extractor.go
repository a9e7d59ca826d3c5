package script

import "strings"

// An Extractor pulls the code out of a model response.
type Extractor struct {
	StartMarker string
	EndMarker   string
	// Header is prepended to every extracted script.
	Header string
}

// PythonExtractor extracts fenced python code and declares it as UTF-8.
var PythonExtractor = Extractor{
	StartMarker: "```python",
	EndMarker:   "```",
	Header:      "# -*- coding: utf-8 -*-\n",
}

// Extract returns the trimmed code that follows the first start marker, up to
// the next end marker. If there is no end marker the code runs to the end of
// the response. A response without a start marker is used as is.
func (e Extractor) Extract(response string) string {
	_, after, found := strings.Cut(response, e.StartMarker)
	if !found {
		return e.Header + response
	}
	code, _, _ := strings.Cut(after, e.EndMarker)
	return e.Header + strings.TrimSpace(code)
}
