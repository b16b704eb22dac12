package bitmap

import "sync/atomic"

var generationCounter atomic.Uint64

func nextGenerationID() uint64 {
	return generationCounter.Add(1)
}

// GenerationID returns an id that changes whenever the pixels or the
// metadata affecting their rendering change.
func (b *Bitmap) GenerationID() uint64 {
	return b.generation
}

func (b *Bitmap) notifyChanged() {
	b.generation = nextGenerationID()
}
