package output

import "context"

type AppLauncher interface {
	Launch(ctx context.Context, executable string) error
}
