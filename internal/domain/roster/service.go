package roster

import "context"

type RosterService interface {
	// Grid
	GetGrid(ctx context.Context, req GridRequest) (GridResponse, error)
	GetCell(ctx context.Context, req CellRequest) (CellDetailResponse, error)

	// Window
	GetWindow(ctx context.Context, req WindowRequest) (WindowResponse, error)

	// Colors
	GetContrast(ctx context.Context, req ContrastRequest) (ContrastResponse, error)
}
