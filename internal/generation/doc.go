// Package generation turns vocabulary into practice material and grades the
// learner's answers using a generative-language service.
//
// The package depends only on the TextModel interface; the concrete Gemini
// client lives in internal/platform/gemini. SentenceGenerator produces one
// sentence per selected word and rejects structurally invalid batches.
// AnswerGrader always yields an outcome, falling back to a deterministic
// comparison when the service cannot be reached or returns garbage.
package generation
