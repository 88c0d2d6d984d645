// Package compaction keeps conversation transcripts bounded in size.
//
// Two independent, composable strategies are provided:
//
//   - Elide is a pure, stateless filter that removes messages made up
//     exclusively of tool-protocol traffic (calls, results, retries).
//   - Repacker summarizes the middle of a long transcript with a
//     secondary, cheaper model while preserving the head message and a
//     protected tail window verbatim.
//
// Repacking never corrupts a transcript: when the summarizer exhausts
// its retry budget the original transcript is returned unchanged.
package compaction
