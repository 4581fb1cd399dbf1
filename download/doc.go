// Package download turns a video link into a named, size-checked audio file.
//
// Service.Fetch runs the whole acquisition inside a scratch directory that is
// removed on every exit path, including panics in the delivery callback. The
// extraction tool itself sits behind the Extractor interface; YTDLP is the
// production implementation built on github.com/lrstanley/go-ytdlp.
package download
