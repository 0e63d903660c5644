package service

import "errors"

var (
	ErrDatabase = errors.New("database error")
	ErrNotFound = errors.New("not found")
)

type Pagination struct {
	PageIndex int `json:"pageIndex" form:"pageIndex"`
	PageSize  int `json:"pageSize" form:"pageSize"`
}

func (p *Pagination) GetPageIndex() int {
	if p.PageIndex <= 0 {
		return 1
	}
	return p.PageIndex
}

func (p *Pagination) GetPageSize() int {
	if p.PageSize <= 0 {
		return 10
	}
	return p.PageSize
}
