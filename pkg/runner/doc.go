/*
Package runner implements the interactive loop that drives a tour from a command stream.

It acts as the bridge between a walkthrough.Tour and a terminal or a pipe.
The runner shows the tour, reads one command per line (next, back, close and
their short forms), persists the state after every command and resumes an
active session at its current step.

# Key Components

  - Runner: The loop. Stops when the tour ends, the input closes or the context is cancelled.
  - IOHandler: A ports.Host that can also read commands.
  - TextHandler: Framed callouts for interactive CLI usage.
  - JSONHandler: One effect per line for scripted hosts.

# Usage

	r := runner.NewRunner(
		runner.WithSessions(session.NewManager(store)),
		runner.WithSessionID("user-1"),
	)

	state, err := r.Run(ctx, engine)
*/
package runner
