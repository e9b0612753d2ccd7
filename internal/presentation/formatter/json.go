package formatter

import (
	"fmt"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(view ReportView) error {
	data, err := sonic.ConfigDefault.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
