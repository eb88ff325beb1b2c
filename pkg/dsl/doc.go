/*
Package dsl provides a fluent Go API for describing tour pages in code.

It is the programmatic counterpart of page manifests: useful for embedding a tour in a
Go host, for tests, and for generating pages on the fly.

Example usage:

	page, err := dsl.New().
		Element("search").Step(1).Describe("Search anything from here.").At(10, 20, 100, 40).
		Element("inbox").Step(2).Describe("Your messages.").At(80, 20, 200, 20).
		Element("logo").At(0, 0, 40, 40).
		Build()
	if err != nil {
		return err
	}
	engine, err := walkthrough.New("", walkthrough.WithPage(page))
*/
package dsl
