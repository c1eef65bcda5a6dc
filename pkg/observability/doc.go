/*
Package observability exports push metrics to Prometheus.

Metrics are fed by the runner's lifecycle hooks:

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	r, err := runner.New(opts, snapshot, runner.WithLifecycleHooks(metrics.Hooks()))
*/
package observability
