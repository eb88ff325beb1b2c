/*
Package ports defines the driven ports (interfaces) for the walkthrough controller.

These interfaces decouple the tour logic from the host environment, allowing the
controller to run against a browser bridge, a terminal, a static page description or
test fakes, and to persist tours in various storage backends.

# Key Interfaces

  - ElementLookup: Finds the element tagged with a step marker.
  - GeometryProvider: Reports the bounding box of an element.
  - Host: Receives the controller's render intents (show, highlight, end, warn).
  - StateStore: Responsible for persisting and loading tour State.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
