package basic

// Response 通用响应头
type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

// Page 分页参数, 页码从1开始
type Page struct {
	Page   *int64  `json:"page,omitempty"`
	Size   *int64  `json:"size,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
}

func (p *Page) GetPage() int64 {
	if p == nil || p.Page == nil {
		return 1
	}
	return *p.Page
}

func (p *Page) GetSize() int64 {
	if p == nil || p.Size == nil {
		return 10
	}
	return *p.Size
}
