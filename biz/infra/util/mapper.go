package util

import (
	"github.com/xh-polaris/advisor-core-api/biz/application/dto/basic"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func BuildFindOption(p *basic.Page) (opts *options.FindOptionsBuilder) {
	opts = options.Find()

	var page, size int64 = 1, 10
	if p != nil {
		if p.Page != nil {
			page = *p.Page
		}
		if p.Size != nil {
			size = *p.Size
		}
	}
	opts.SetSkip((page - 1) * size).SetLimit(size)
	return
}

func HasMore(total int64, page *basic.Page) bool {
	return total > page.GetPage()*page.GetSize()
}
