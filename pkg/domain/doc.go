/*
Package domain contains the core domain models of the walkthrough tour controller.

It defines the entities the controller reasons about: the elements a host exposes, their
bounding geometry, the resolved steps of a tour, the mutable tour state and the placement
computed for the callout. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Element: An opaque handle into the host's element tree, discovered by marker.
  - Step: One position of the tour (1-based), resolved to an Element and a description.
  - State: The runtime snapshot of a tour (Phase, Current Step, Total Steps, History).
  - Placement: Where the host should draw the callout for the current step.
  - Effect: A structural record of an outbound call the controller made to the host.
*/
package domain
