package utils

import (
	"math/rand"
	"strings"

	"github.com/mozillazg/go-pinyin"
	"github.com/sysu-ecnc-dev/employee-directory/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

var genders = []string{"Male", "Female", "Other"}

const (
	minSalary = 3000
	maxSalary = 30000
)

// GenerateRandomChineseName 返回姓和名
func GenerateRandomChineseName() (string, string) {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname, name
}

var digits = "0123456789"

func randomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	return username + randomDigits(rand.Intn(3)+1)
}

// Romanize 把汉字转换为首字母大写的拼音，例如 "小明" -> "Xiaoming"
func Romanize(chinese string) string {
	s := strings.Join(pinyin.LazyConvert(chinese, nil), "")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// GenerateRandomUser 生成的用户没有密码哈希，需要经过注册流程写入
func GenerateRandomUser(emailDomainName string) *domain.User {
	surname, name := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(surname + name)

	return &domain.User{
		Username: username,
		Email:    username + "@" + emailDomainName,
	}
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	surname, name := GenerateRandomChineseName()
	firstName := Romanize(name)
	lastName := Romanize(surname)
	email := strings.ToLower(firstName+"."+lastName) + randomDigits(4) + "@" + emailDomainName

	return &domain.Employee{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Gender:    genders[rand.Intn(len(genders))],
		Salary:    float64(minSalary + rand.Intn((maxSalary-minSalary)/100+1)*100),
	}
}
