package model

// ShortTextSpaces is how many space-delimited words the derived short text
// fields keep.
const ShortTextSpaces = 5

// Truncate scans text left to right and cuts it at the maxSpaces-th space
// character, so the result keeps exactly the first maxSpaces space-delimited
// words. Only literal spaces count as boundaries; punctuation stays attached
// to the preceding word. A shortened result gets a literal " ..." suffix,
// otherwise the text is returned unchanged.
func Truncate(text string, maxSpaces int) string {
	if maxSpaces <= 0 {
		return text
	}

	spaces := 0
	for i, r := range text {
		if r != ' ' {
			continue
		}
		spaces++
		if spaces == maxSpaces {
			return text[:i] + " ..."
		}
	}
	return text
}
