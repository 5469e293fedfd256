/*
Package events provides a pub/sub event broker for dashboard events.

The broker distributes events (action submissions, cache refreshes,
reason additions) to any number of subscribers over
buffered channels. Slow subscribers are skipped rather than blocking
the broadcast loop.

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	go func() {
		for ev := range sub {
			log.Info(string(ev.Type))
		}
	}()

	broker.Publish(&events.Event{
		Type:    events.EventActionSubmitted,
		Message: "recover submitted for workflow1",
	})
*/
package events
