package buildh

import (
	"errors"
	"fmt"
)

// Abort is the panic value of a fatal build error when [Build.Exit] returns
// instead of terminating the process. [Try] turns it into an error.
type Abort struct {
	Code int
	Err  error
}

func (a *Abort) Error() string {
	return fmt.Sprintf("build aborted with status %d: %s", a.Code, a.Err)
}

func (a *Abort) Unwrap() error { return a.Err }

// Try calls f and returns any panic as error. Use it to run build steps
// with a [Build] whose Exit does not terminate the process.
func Try(f func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			switch e := p.(type) {
			case error:
				err = e
			case string:
				err = errors.New(e)
			default:
				err = fmt.Errorf("panic: %+v", e)
			}
		}
	}()
	f()
	return nil
}
