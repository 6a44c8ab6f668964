package utils

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// 四舍五入到places位小数并去掉末尾的0，v须为有限值
func FormatRounded(v float64, places int) string {
	return decimal.NewFromFloat(v).Round(int32(places)).String()
}

// 固定prec位小数
func FormatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// 带千分位的数字，用于报表展示
func HumanNumber(v float64, prec int) string {
	return printer.Sprintf("%."+strconv.Itoa(prec)+"f", v)
}

func GetNowTimeTag() string {
	const tf = "20060102150405.000"
	t := time.Now().Format(tf)
	return t[:len(tf)-4] + t[len(tf)-3:]
}
