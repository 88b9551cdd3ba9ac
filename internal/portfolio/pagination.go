package portfolio

import "strconv"

// PageRequest 描述一次分页查询的位置与大小。
type PageRequest struct {
	Page     int
	PageSize int
}

// ParsePageRequest 解析查询参数中的 page / page_size。
// 无法解析或小于 1 的值回落到默认值；page_size 被夹到 maxSize。
func ParsePageRequest(pageRaw, sizeRaw string, defaultSize, maxSize int) PageRequest {
	page := 1
	if v, err := strconv.Atoi(pageRaw); err == nil && v >= 1 {
		page = v
	}

	size := defaultSize
	if v, err := strconv.Atoi(sizeRaw); err == nil && v >= 1 {
		size = v
	}
	if size > maxSize {
		size = maxSize
	}

	return PageRequest{Page: page, PageSize: size}
}

// Offset 返回 SQL OFFSET 值。
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageMeta 是分页响应元数据。
type PageMeta struct {
	Page        int   `json:"page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPageMeta 根据总条数计算分页元数据。
// 空结果集也至少有一页；超出范围的页返回空列表而非最后一页。
func NewPageMeta(totalItems int64, req PageRequest) PageMeta {
	totalPages := int((totalItems + int64(req.PageSize) - 1) / int64(req.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return PageMeta{
		Page:        req.Page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNext:     req.Page < totalPages,
		HasPrevious: req.Page > 1,
	}
}
