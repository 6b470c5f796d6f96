package exec

import "github.com/luigirelational/pagedb/internal/table"

// Execute drives op to exhaustion, discarding every tuple. Open is called
// once, Next loops until exhausted, and Close runs whenever Open succeeded,
// even if Next fails. If Open fails, its error is returned and Close is not
// called.
func Execute(op Operator) error {
	if err := op.Open(); err != nil {
		return err
	}
	defer op.Close()

	for {
		_, ok, err := op.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// ExecuteAndCollect drives op to exhaustion, materialising every tuple
// produced into a slice.
func ExecuteAndCollect(op Operator) ([]table.Tuple, error) {
	if err := op.Open(); err != nil {
		return nil, err
	}
	defer op.Close()

	var out []table.Tuple
	for {
		tup, ok, err := op.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tup)
	}
}
