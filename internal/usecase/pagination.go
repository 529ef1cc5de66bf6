package usecase

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Offsetは1ページの件数。0はデフォルト
type PageInput struct {
	Page   int
	Offset int
}

type PageInfo struct {
	TotalResults int64
	TotalPages   int64
}

func (p PageInput) normalize() (PageInput, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Offset == 0 {
		p.Offset = DefaultPageSize
	}
	if p.Page < 1 {
		return p, InvalidInput("Page must be greater than 0")
	}
	if p.Offset < 1 || p.Offset > MaxPageSize {
		return p, InvalidInput("Offset must be between 1 and 100")
	}
	return p, nil
}

// ceil(total / size)
func newPageInfo(total int64, size int) PageInfo {
	return PageInfo{
		TotalResults: total,
		TotalPages:   (total + int64(size) - 1) / int64(size),
	}
}
