/*
Package walkthrough drives guided product tours.

A tour walks a first-time user through a fixed, ordered sequence of page elements, showing
a callout next to each one, and lets the user step forward, step back or dismiss the tour.

# Convention

Step N targets the first element tagged with the marker "tour-target-N" (a CSS class in a
browser, a list entry in a manifest). Its description is read from the "walkthrough"
annotation (a data-walkthrough attribute). Steps must start at 1 and increase by one: the
tour finds a gap only when it tries to move into it, warns the host and ends.

# Hexagonal layout

The controller never renders anything. The host supplies a page (ports.Page), which finds
and measures elements, and a ports.Host, which receives four render intents: OnShow with the
callout placement, OnHighlightChange, OnEnd and OnWarn. Reference hosts ship for the terminal
(pkg/runner), HTTP (pkg/adapters/http) and MCP (pkg/adapters/mcp).

# Usage

	eng, err := walkthrough.New("./page.html")
	if err != nil {
		log.Fatal(err)
	}

	tour := eng.NewTour("", ports.HostFuncs{
		Show: func(ctx context.Context, p domain.Placement, text string) {
			fmt.Printf("step %d/%d at (%.0f,%.0f): %s\n", p.Step, p.TotalSteps, p.Top, p.Left, text)
		},
		End: func(ctx context.Context) { fmt.Println("done") },
	})

	ctx := context.Background()
	tour.Activate(ctx, eng.CountSteps())
	tour.Next(ctx)
	tour.Close(ctx)
*/
package walkthrough
