/*
conveyor runs single-producer, single-consumer pipelines over a bounded blocking queue.

A run moves a source slice into a destination slice through a Queue of fixed capacity:

	source -> Producer -> Queue -> Consumer -> destination

The Producer and the Consumer each run on their own goroutine. Put blocks while the queue is full and Get blocks while it is empty,
so the capacity bounds how far the producer can run ahead of the consumer. Items are delivered in the exact order they were produced.

The end of the stream is an in-band marker. Run wraps every item in a Message and terminates the stream with EndOfStream, so any value
(including the zero value of the item type) travels as data. RunWithSentinel keeps the classic style where a caller-chosen value marks
the end of the stream: a data item equal to the sentinel stops the consumer early, so only use it when the sentinel can never appear in the data.

The queue wakes a single waiter on each transition (one slot freed, one item available). This is correct for one producer and one
consumer only. Sharing a Queue between several producers or several consumers is not supported.

There is no timeout and no cancellation. A Put or Get that is never matched by the other side blocks forever; a run is safe because
the producer always terminates the stream and the consumer always reads until the end marker, or the run discards what is left.
Callers needing bounded waits should add a context or deadline to Put and Get: on expiry, return a timeout error without
touching the buffer and without consuming a wakeup meant for another waiter.

Observers receive an Event for each item moved and for the end of the stream. They are a side channel: an Observer never blocks the
pipeline decisions and a panicking Observer is ignored. See the observe package for structured logging and metrics observers.
*/

package conveyor
