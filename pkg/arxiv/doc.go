// Package arxiv is a client for the arXiv OAI-PMH metadata service.
//
// The client fetches a single record in the "arXiv" metadata format and
// returns it as a Record whose fields are still in their upstream string
// form. Date fields use the OAI-PMH day granularity (YYYY-MM-DD) and are
// empty when the record does not carry them.
//
// # Usage
//
//	client := arxiv.NewClient(arxiv.WithTimeout(30 * time.Second))
//	record, err := client.GetRecord(ctx, "2402.10949")
//	if err != nil {
//	    if errors.Is(err, arxiv.ErrNotFound) {
//	        // Unknown identifier
//	    }
//	}
//
// # Errors
//
//   - ErrNotFound: the repository has no record for the identifier
//   - ErrUnavailable: network failure, non-2xx response or OAI-PMH error
//   - ErrTimeout: the request exceeded its deadline (also ErrUnavailable)
//   - ErrInvalidResponse: the response body could not be decoded
package arxiv
