/*
Package pipeline ties the TLD directory, record store, resolution
coordinator, archive checker and report aggregator together into a single
report run, controlled by a plain [Config] record.

	cfg := pipeline.DefaultConfig()
	cfg.MaxThreads = 4
	res, err := pipeline.Run(ctx, cfg, []pipeline.Pair{
	    {Email: "someone@example.org", SourceFile: "inbox.mbox"},
	})

A run either completes or fails as a whole: when the TLD directory cannot be
fetched or the domains cannot be resolved, the caller gets an error instead
of a report that would silently treat unchecked domains as invalid.
*/
package pipeline
