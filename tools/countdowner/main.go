// Command countdowner prints a countdown, one line per second, then BOOM! on stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/dustin/go-humanize"
	"log"
	"os"
	"os/signal"
	"ringkit/stopwatch"
	"time"
)

var num = flag.Int("num", 5, "the count down seconds")

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watch := stopwatch.New()
	if err := watch.Start(time.Duration(*num) * time.Second); err != nil {
		log.Fatal(err)
	}
	started := time.Now()
	for {
		left, err := watch.Remaining()
		if err != nil {
			log.Fatal(err)
		}
		if left < 0 {
			break
		}
		fmt.Println(left.Round(time.Second) / time.Second)
		tick, cancel := context.WithTimeout(ctx, min(left+time.Nanosecond, time.Second))
		// Wait ends at expiry or when the one second tick runs out.
		if err := watch.Wait(tick); err != nil && ctx.Err() != nil {
			cancel()
			_, _ = fmt.Fprintln(os.Stderr, "aborted", humanize.Time(started))
			os.Exit(1)
		}
		cancel()
	}
	_, _ = fmt.Fprintln(os.Stderr, "BOOM!", "started", humanize.Time(started))
}
