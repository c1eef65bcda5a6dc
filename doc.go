/*
Package sitepush pushes a site to a remote Engine API in dependency order.

A push establishes trust with the endpoint (client certificate, CA bundle and
an API token), computes a writer plan from the run options and then runs one
writer per content domain: site, snippets, content types, content entries,
translations, pages and theme assets. The first failing writer stops the
push; domains already written stay written.

# Plan

The base order is fixed. Content entries are only pushed when "data" is true
or "content_entries" is listed in "only"; translations are pushed unless
"translations" is false and they are not listed in "only".

# Usage

	snap, err := snapshot.LoadFile("site.yaml")
	if err != nil {
		log.Fatal(err)
	}

	report, err := sitepush.Push(ctx, map[string]any{
		"uri":     "https://www.example.com/locomotive/api",
		"api_key": os.Getenv("SITEPUSH_API_KEY"),
		"data":    true,
	}, snap)
	if err != nil {
		if d, ok := domain.FailedDomain(err); ok {
			log.Printf("push stopped at %s", d)
		}
		log.Fatal(err)
	}
	log.Printf("pushed %d domains", len(report.Succeeded()))

For finer control (hooks, custom writers, run locks) build a runner.Runner
directly, or pass runner options through WithRunnerOptions.
*/
package sitepush
