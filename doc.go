// Package askgo is a memoizing executor for model-backed requests.
//
// An Agent wraps a Caller (the model round-trip), a memory chain (the
// conversation transcript between runs), and an optional content-keyed
// cache. Identical inputs from the same agent are answered from the
// cache without touching the model; fresh runs flow through the memory
// chain, which can prune tool traffic and compact long transcripts with
// a secondary summarizing model.
//
// Basic usage:
//
//	agent, err := askgo.New[string](askgo.Config{
//		Name:   "assistant",
//		Caller: askgo.NewAnthropicCaller(&client, "claude-sonnet-4-5", 4096, ""),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	answer, err := agent.Run(ctx, "What is the capital of France?")
//
// Attach a cache.Cache to memoize runs, a memory.History to carry
// conversation state, and a hooks.Registry for observability.
package askgo
