/*
Package markov provides a small, in-memory, character-level Markov chain
language model for Go.

A LanguageModel learns, from a training corpus, how often each character
follows every window of a fixed number of characters, and uses those
frequencies to generate new text that statistically resembles the corpus.
Generation supports temperature and top-K sampling, a streaming API, and
deterministic output when the model is constructed with an explicit seed.

The model is not safe for concurrent use.
*/
package markov
