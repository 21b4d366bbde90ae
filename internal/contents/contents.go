// Package contents models the polymorphic input of a finder session and
// converts it into the single shell command the finder process executes.
//
// Four shapes are supported: a static ordered list, a push-based
// producer, a pre-built shell command, and an array of typed sub-sources
// concatenated in declared order. A producer delivers entries through a
// push callback; returning from the producer function is the
// end-of-stream signal, whether the entries were generated on the
// calling goroutine or handed over from the producer's own goroutines.
package contents

// Contents is the polymorphic session input. It is consumed exactly
// once per session, or once per reload cycle in live mode.
type Contents interface {
	contents()
}

// List is a static ordered sequence of entries.
type List []string

func (List) contents() {}

// ProducerFunc is a push-based producer. It must call push once per
// entry, in order, and return when the stream ends. push returns false
// when the consumer has cancelled; the producer should stop promptly.
type ProducerFunc func(push func(entry string) bool) error

func (ProducerFunc) contents() {}

// Command is a pre-built shell command whose stdout is the entry stream.
type Command string

func (Command) contents() {}

// Sub pairs a sub-source with an optional per-entry prefix.
type Sub struct {
	Prefix   string
	Contents Contents
}

// Multi concatenates sub-sources: all entries of sub i are emitted
// before any entry of sub i+1. Sub contents must be homogeneously typed.
type Multi []Sub

func (Multi) contents() {}

// Combine flattens a Multi into a single Contents value. Lists collapse
// into one prefixed List; producers collapse into one sequential
// producer. A mix of types across the array is a configuration error.
func Combine(m Multi) (Contents, error) {
	if len(m) == 0 {
		return List(nil), nil
	}

	lists := 0
	producers := 0
	for _, sub := range m {
		switch sub.Contents.(type) {
		case List:
			lists++
		case ProducerFunc:
			producers++
		default:
			return nil, &UnsupportedSubError{Sub: sub.Contents}
		}
	}

	switch {
	case lists == len(m):
		var out List
		for _, sub := range m {
			for _, entry := range sub.Contents.(List) {
				out = append(out, sub.Prefix+entry)
			}
		}
		return out, nil
	case producers == len(m):
		return combineProducers(m), nil
	default:
		return nil, &MixedContentsError{Lists: lists, Producers: producers}
	}
}

// combineProducers drives sub-producers strictly in declared order. Each
// sub runs on its own goroutine feeding a channel; the combiner consumes
// one channel to closure before starting the next, so a sub delivering
// entries asynchronously and one delivering them inline on the call
// stack behave identically and the final end-of-stream fires exactly
// once, after every sub has finished.
func combineProducers(m Multi) ProducerFunc {
	return func(push func(string) bool) error {
		for _, sub := range m {
			producer := sub.Contents.(ProducerFunc)
			prefix := sub.Prefix

			ch := make(chan string)
			done := make(chan struct{})
			errc := make(chan error, 1)

			go func() {
				defer close(ch)
				errc <- producer(func(entry string) bool {
					select {
					case ch <- entry:
						return true
					case <-done:
						return false
					}
				})
			}()

			cancelled := false
			for entry := range ch {
				if !push(prefix + entry) {
					cancelled = true
					break
				}
			}
			close(done)
			for range ch {
				// Drain so the producer goroutine can observe done and exit.
			}
			if err := <-errc; err != nil {
				return err
			}
			if cancelled {
				return nil
			}
		}
		return nil
	}
}
