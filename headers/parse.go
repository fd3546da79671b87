package headers

import "bytes"

// ParseFieldLine parses a single wire-format header line ("Key: value") and
// adds it to the collection.
func (h *Headers) ParseFieldLine(data []byte) error {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		return ErrMalformedHeader
	}

	// leading whitespace before the key is tolerated
	hkey := bytes.TrimLeft(data[:colonPos], " \t")
	hvalue := bytes.Trim(data[colonPos+1:], " \t")

	if !bytes.Equal(hkey, bytes.TrimRight(hkey, " ")) {
		// whitespace between key and colon is invalid
		return ErrMalformedHeader
	}

	if !isValidFieldName(string(hkey)) || !isValidFieldValue(string(hvalue)) {
		return ErrMalformedHeader
	}

	h.Add(string(hkey), string(hvalue))
	return nil
}
