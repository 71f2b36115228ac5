package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/julnac/salon-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Anna", "Maria", "Katarzyna", "Magdalena", "Agnieszka", "Joanna", "Ewa", "Zofia",
	"Piotr", "Jan", "Tomasz", "Marek", "Pawel", "Michal", "Krzysztof", "Jakub",
}

var commonLastNames = []string{
	"Nowak", "Kowalski", "Wisniewski", "Wojcik", "Kowalczyk", "Kaminski", "Lewandowski",
	"Zielinski", "Szymanski", "Wozniak", "Dabrowski", "Kozlowski", "Jankowski", "Mazur",
}

var serviceNames = []string{
	"Haircut", "Beard trim", "Coloring", "Highlights", "Blow dry", "Keratin treatment",
	"Manicure", "Pedicure", "Eyebrow shaping", "Scalp massage", "Perm", "Balayage",
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var digits = "0123456789"

func GenerateRandomName() (string, string) {
	return commonFirstNames[rand.Intn(len(commonFirstNames))], commonLastNames[rand.Intn(len(commonLastNames))]
}

func GenerateEmail(firstName, lastName, emailDomainName string) string {
	local := strings.ToLower(firstName + "." + lastName)
	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}
	return local + "@" + emailDomainName
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	firstName, lastName := GenerateRandomName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        GenerateEmail(firstName, lastName, emailDomainName),
		PasswordHash: string(passwordHash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         domain.RoleClient,
	}

	return user, nil
}

func GenerateRandomStaff(emailDomainName string) *domain.Staff {
	firstName, lastName := GenerateRandomName()
	return &domain.Staff{
		FirstName: firstName,
		LastName:  lastName,
		Email:     GenerateEmail(firstName, lastName, emailDomainName),
	}
}

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(26)]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

// GenerateRandomServiceOffer picks a duration that is a multiple of five minutes between 15 and 180.
func GenerateRandomServiceOffer() *domain.ServiceOffer {
	return &domain.ServiceOffer{
		Name:            serviceNames[rand.Intn(len(serviceNames))] + " " + GenerateRandomID(2, 3),
		Price:           float64(rand.Intn(40)+4) * 10,
		DurationMinutes: int32(rand.Intn(34)+3) * 5,
	}
}

// GenerateRandomQualifiedServices returns a random non-empty subset of serviceIDs, shuffled
// with Fisher-Yates.
func GenerateRandomQualifiedServices(serviceIDs []int64) []int64 {
	ids := make([]int64, len(serviceIDs))
	copy(ids, serviceIDs)

	for i := len(ids) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}

	if len(ids) == 0 {
		return ids
	}
	n := rand.Intn(len(ids)) + 1
	return ids[:n]
}

// GenerateRandomWeeklySchedule returns one entry per ISO day. Sunday is always a day off and
// every working day lies within the opening hours.
func GenerateRandomWeeklySchedule(staffID int64, openingHour, closingHour int) []*domain.WorkSchedule {
	schedules := make([]*domain.WorkSchedule, 0, 7)

	for day := int32(1); day <= 7; day++ {
		ws := &domain.WorkSchedule{
			StaffID:   staffID,
			DayOfWeek: day,
			StartTime: fmt.Sprintf("%02d:00:00", openingHour),
			EndTime:   fmt.Sprintf("%02d:00:00", closingHour),
		}

		span := closingHour - openingHour
		if day != 7 && span > 0 && rand.Intn(6) != 0 {
			startHour := openingHour + rand.Intn(span/2+1)
			endHour := closingHour - rand.Intn(span/2+1)
			if endHour <= startHour {
				endHour = startHour + 1
			}
			ws.StartTime = fmt.Sprintf("%02d:%02d:00", startHour, []int{0, 30}[rand.Intn(2)])
			ws.EndTime = fmt.Sprintf("%02d:00:00", endHour)
			ws.IsWorkingDay = true
		}

		schedules = append(schedules, ws)
	}

	return schedules
}

var bookingStatuses = []domain.BookingStatus{
	domain.BookingStatusPending,
	domain.BookingStatusConfirmedByClient,
	domain.BookingStatusApproved,
	domain.BookingStatusCancelled,
}

// GenerateRandomBooking places the services back to back at a random quarter hour of the
// working window on date. It reports false when the window is too short for them.
func GenerateRandomBooking(ws *domain.WorkSchedule, userID int64, services []*domain.ServiceOffer, date time.Time) (*domain.Booking, bool) {
	if !ws.IsWorkingDay || len(services) == 0 {
		return nil, false
	}

	start, err := time.Parse(domain.TimeLayout, ws.StartTime)
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(domain.TimeLayout, ws.EndTime)
	if err != nil {
		return nil, false
	}

	total := 0
	price := 0.0
	ids := make([]int64, 0, len(services))
	for _, svc := range services {
		total += int(svc.DurationMinutes)
		price += svc.Price
		ids = append(ids, svc.ID)
	}

	free := int(end.Sub(start).Minutes()) - total
	if free < 0 {
		return nil, false
	}

	offset := rand.Intn(free/15+1) * 15
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	startTime := day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute()+offset)*time.Minute)

	return &domain.Booking{
		StaffID:    ws.StaffID,
		UserID:     userID,
		StartTime:  startTime,
		EndTime:    startTime.Add(time.Duration(total) * time.Minute),
		Status:     bookingStatuses[rand.Intn(len(bookingStatuses))],
		TotalPrice: price,
		ServiceIDs: ids,
	}, true
}
