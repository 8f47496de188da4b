package segment

import "fmt"

// Segmenter splits extracted text into fixed-size overlapping windows, the
// unit handed to the embedder. Windows are counted in runes so multi-byte
// text does not split mid-character.
type Segmenter struct {
	chunkSize int
	overlap   int
}

func New(chunkSize, overlap int) (*Segmenter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("segment: chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("segment: overlap must be non-negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("segment: overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	return &Segmenter{chunkSize: chunkSize, overlap: overlap}, nil
}

// Segment returns the ordered chunk sequence for text. Each chunk starts
// chunkSize-overlap runes after the previous one; the final chunk may be
// shorter than chunkSize. Empty text yields no chunks.
func (s *Segmenter) Segment(text string) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	step := s.chunkSize - s.overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
