package services

import (
	"strings"

	"microcourses/events"
	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
)

type CreatorService interface {
	Apply(user *models.User, req models.CreatorApplicationRequest) error
	ListPending() ([]models.User, error)
	SetApplicationStatus(userID uint, status models.ApplicationStatus) (*models.User, error)
}

type creatorService struct {
	userRepo  repositories.UserRepository
	publisher events.Publisher
}

func NewCreatorService(userRepo repositories.UserRepository, publisher events.Publisher) CreatorService {
	return &creatorService{userRepo: userRepo, publisher: publisher}
}

func (s *creatorService) Apply(user *models.User, req models.CreatorApplicationRequest) error {
	experience := strings.TrimSpace(req.Experience)
	motivation := strings.TrimSpace(req.Motivation)
	if experience == "" || motivation == "" {
		return models.BadRequest("Please provide experience and motivation")
	}

	switch user.Standing() {
	case models.StandingAdmin:
		return models.Conflict("Admins cannot apply to become creators")
	case models.StandingPendingCreator:
		return models.Conflict("Application already pending")
	case models.StandingCreator:
		return models.Conflict("You are already a creator")
	}
	// a demoted applicant keeps its Pending status
	if user.CreatorApplicationStatus == models.ApplicationPending {
		return models.Conflict("Application already pending")
	}

	user.Role = models.RoleCreator
	user.CreatorApplicationStatus = models.ApplicationPending
	user.Experience = experience
	user.Motivation = motivation
	user.Portfolio = strings.TrimSpace(req.Portfolio)

	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(err, "saving application")
	}
	return nil
}

func (s *creatorService) ListPending() ([]models.User, error) {
	users, err := s.userRepo.ListByApplicationStatus(models.ApplicationPending)
	if err != nil {
		return nil, errors.Wrap(err, "listing pending applications")
	}
	return users, nil
}

func (s *creatorService) SetApplicationStatus(userID uint, status models.ApplicationStatus) (*models.User, error) {
	if status != models.ApplicationApproved && status != models.ApplicationRejected {
		return nil, models.BadRequest("Invalid status")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.NotFound("User not found")
		}
		return nil, errors.Wrap(err, "loading user")
	}

	user.CreatorApplicationStatus = status
	if status == models.ApplicationApproved {
		user.Role = models.RoleCreator
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, errors.Wrap(err, "saving application status")
	}

	publish(s.publisher, events.TypeCreatorApplicationDecided, events.CreatorApplicationDecided{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Status: string(status),
	})
	return user, nil
}
