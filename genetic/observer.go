package genetic

// Observer receives per-generation statistics and non-fatal warnings
// Observers run on the engine goroutine and must not retain the engine
type Observer interface {
	OnGeneration(stats GenerationStats)
	OnWarning(err error)
}

// NopObserver discards everything
type NopObserver struct{}

func (NopObserver) OnGeneration(GenerationStats) {}
func (NopObserver) OnWarning(error)              {}

// Observers fans out to several observers in order
type Observers []Observer

func (o Observers) OnGeneration(stats GenerationStats) {
	for _, obs := range o {
		obs.OnGeneration(stats)
	}
}

func (o Observers) OnWarning(err error) {
	for _, obs := range o {
		obs.OnWarning(err)
	}
}
