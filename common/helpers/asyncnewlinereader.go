package helpers

import (
	"bufio"
	"golang.org/x/text/encoding"
	"io"
	"io/ioutil"
	"log"
)

/**
read line-by-line from src until EOF and push each result as a string pointer to the output channel.
on completion, a nil is pushed to the output channel
on error, a single error is pushed to the error channel. whatever is left in src is then discarded so that a
subprocess writing to it does not block on a full pipe
*/
func AsyncNewlineReader(src io.Reader, decoder *encoding.Decoder, bufferSize int) (chan *string, chan error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanLines)

	outputChan := make(chan *string, bufferSize)
	errorChan := make(chan error, 1)

	go func() {
		for {
			moreContent := scanner.Scan()
			if moreContent {
				retrievedBytes := scanner.Bytes()
				if decoder == nil {
					retrievedString := string(retrievedBytes)
					outputChan <- &retrievedString
				} else {
					convertedBytes, decodeErr := decoder.Bytes(retrievedBytes)
					if decodeErr != nil {
						log.Printf("Could not decode incoming line %s: %s", string(retrievedBytes), decodeErr)
						retrievedString := string(retrievedBytes)
						outputChan <- &retrievedString
					} else {
						convertedString := string(convertedBytes)
						outputChan <- &convertedString
					}
				}
			} else {
				err := scanner.Err()
				if err != nil {
					errorChan <- err
					io.Copy(ioutil.Discard, src)
					return
				} else {
					outputChan <- nil
					return
				}
			}
		}
	}()

	return outputChan, errorChan
}
