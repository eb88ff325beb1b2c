package walkthrough_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
)

// ExampleNew_memory runs a tour over an in-memory page with a host made of plain functions.
func ExampleNew_memory() {
	page, err := memory.NewPage(
		memory.Tagged(1, "Search anything from here.", domain.Rect{Top: 10, Left: 20, Width: 100, Height: 40}),
		memory.Tagged(2, "Your unread messages.", domain.Rect{Top: 80, Left: 20, Width: 200, Height: 20}),
	)
	if err != nil {
		log.Fatal(err)
	}

	eng, err := walkthrough.New("", walkthrough.WithPage(page))
	if err != nil {
		log.Fatal(err)
	}

	host := ports.HostFuncs{
		Show: func(_ context.Context, p domain.Placement, text string) {
			label := "Next"
			if p.IsLastStep {
				label = "Got it!"
			}
			fmt.Printf("[%d/%d] top=%.0f left=%.0f %s (%s)\n", p.Step, p.TotalSteps, p.Top, p.Left, text, label)
		},
		End: func(context.Context) {
			fmt.Println("tour ended")
		},
	}

	ctx := context.Background()
	tour := eng.NewTour("example", host)
	tour.Activate(ctx, eng.CountSteps())
	tour.Next(ctx)
	tour.Next(ctx)

	// Output:
	// [1/2] top=30 left=130 Search anything from here. (Next)
	// [2/2] top=90 left=230 Your unread messages. (Got it!)
	// tour ended
}

// ExampleTour_Back shows that Back on the first step is ignored.
func ExampleTour_Back() {
	page, _ := memory.NewPage(
		memory.Tagged(1, "first", domain.Rect{}),
		memory.Tagged(2, "second", domain.Rect{}),
	)
	eng, _ := walkthrough.New("", walkthrough.WithPage(page))

	tour := eng.NewTour("back", ports.HostFuncs{
		Show: func(_ context.Context, p domain.Placement, text string) { fmt.Println("show", p.Step, text) },
	})

	ctx := context.Background()
	tour.Activate(ctx, 2)
	tour.Back(ctx)
	tour.Next(ctx)
	tour.Back(ctx)

	// Output:
	// show 1 first
	// show 2 second
	// show 1 first
}
