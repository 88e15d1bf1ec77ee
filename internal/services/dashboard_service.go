package services

import (
	"context"
	"fmt"

	"github.com/Temirlan472/Office_Board/internal/models"
	"github.com/Temirlan472/Office_Board/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
)

// DashboardService aggregates the counters shown on the admin dashboard.
type DashboardService struct {
	userRepo    *repository.UserRepository
	noticeRepo  *repository.NoticeRepository
	contactRepo *repository.ContactRepository
}

func NewDashboardService(userRepo *repository.UserRepository, noticeRepo *repository.NoticeRepository, contactRepo *repository.ContactRepository) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		noticeRepo:  noticeRepo,
		contactRepo: contactRepo,
	}
}

// Dashboard holds the aggregate counts plus the most recent accounts.
type Dashboard struct {
	TotalEmployees   int64         `json:"total_employees"`
	TotalAdmins      int64         `json:"total_admins"`
	TotalNotices     int64         `json:"total_notices"`
	PublishedNotices int64         `json:"published_notices"`
	UnreadMessages   int64         `json:"unread_messages"`
	RecentUsers      []models.User `json:"recent_users"`
}

// GetDashboard collects all counters. The counts are independent reads, not
// a snapshot.
func (s *DashboardService) GetDashboard(ctx context.Context, recentLimit int64) (*Dashboard, error) {
	if recentLimit < 1 {
		recentLimit = 20
	}

	totalEmployees, err := s.userRepo.CountByRole(ctx, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %v", err)
	}
	totalAdmins, err := s.userRepo.CountByRoles(ctx, models.AdminRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %v", err)
	}
	totalNotices, err := s.noticeRepo.CountNotices(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count notices: %v", err)
	}
	publishedNotices, err := s.noticeRepo.CountNotices(ctx, bson.M{"status": models.NoticeStatusPublished})
	if err != nil {
		return nil, fmt.Errorf("failed to count published notices: %v", err)
	}
	unreadMessages, err := s.contactRepo.CountContacts(ctx, bson.M{"is_read": false})
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %v", err)
	}
	recentUsers, err := s.userRepo.GetRecentUsers(ctx, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent users: %v", err)
	}

	return &Dashboard{
		TotalEmployees:   totalEmployees,
		TotalAdmins:      totalAdmins,
		TotalNotices:     totalNotices,
		PublishedNotices: publishedNotices,
		UnreadMessages:   unreadMessages,
		RecentUsers:      recentUsers,
	}, nil
}
