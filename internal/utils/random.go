package utils

import (
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玉", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "成", "斌",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

// 物业常见的维修部门和楼栋，只用于填充测试数据
var departments = []string{"水电", "暖通", "保洁", "电梯", "消防", "绿化"}
var buildings = []string{"A栋", "B栋", "C栋", "D栋"}

func GenerateRandomDepartments() []string {
	n := rand.Intn(2) + 1
	picked := make([]string, 0, n)
	perm := rand.Perm(len(departments))
	for _, idx := range perm[:n] {
		picked = append(picked, departments[idx])
	}
	return picked
}

func GenerateRandomBuilding() string {
	return buildings[rand.Intn(len(buildings))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

// GenerateRandomStaffUser 生成一个随机的维修员工账号，只用于填充测试数据
func GenerateRandomStaffUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleStaff,
		Departments:  GenerateRandomDepartments(),
		Building:     GenerateRandomBuilding(),
		IsActive:     true,
	}

	return user, nil
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

// GenerateRandomWeeklyAvailability 生成某员工本周的随机时间表，只用于填充测试数据
func GenerateRandomWeeklyAvailability(staffID int64, weekStart time.Time) *domain.StaffAvailability {
	now := time.Now()
	availability := domain.DefaultWeeklyAvailability(staffID, weekStart)
	availability.Status = domain.AvailabilitySubmitted
	availability.SubmittedAt = &now

	flags := []*bool{
		&availability.Monday, &availability.Tuesday, &availability.Wednesday,
		&availability.Thursday, &availability.Friday, &availability.Saturday, &availability.Sunday,
	}
	for _, flag := range flags {
		*flag = rand.Intn(10) < 7
	}

	return availability
}

var staffStatuses = []domain.StaffStatus{
	domain.StaffStatusAvailable,
	domain.StaffStatusUnavailable,
	domain.StaffStatusOnBreak,
	domain.StaffStatusBusy,
	domain.StaffStatusOffDuty,
}

func GenerateRandomStaffStatus() domain.StaffStatus {
	return staffStatuses[rand.Intn(len(staffStatuses))]
}

var dayOffReasons = []string{"家中有事", "身体不适", "探亲", "办理证件", "孩子开家长会"}

func GenerateRandomDayOffReason() string {
	return dayOffReasons[rand.Intn(len(dayOffReasons))]
}
