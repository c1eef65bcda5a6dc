/*
Package runner executes a push: it establishes the session once, computes the
writer plan, and runs each planned domain writer in order against the shared
snapshot and session.

A Runner moves through Idle -> Prepared -> Running -> Completed or Failed.
The first writer failure stops the run; writers already executed are not
rolled back and the returned *domain.WriterError names the failed domain.
The Report records what was attempted.

# Usage

	r, err := runner.New(opts, snapshot, runner.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := r.Prepare(ctx); err != nil {
		return err
	}
	report, err := r.Run(ctx)
*/
package runner
