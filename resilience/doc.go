// Package resilience provides the bulkhead that caps in-flight platform
// transfers.
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "http", MaxConcurrent: 10, MaxWait: time.Minute})
//	release, err := bh.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
package resilience
