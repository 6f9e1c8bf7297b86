package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"github.com/Faizan-Faisal/umt-hackathon/internal/events"
	"github.com/Faizan-Faisal/umt-hackathon/internal/match"
	"github.com/Faizan-Faisal/umt-hackathon/internal/models"
	"github.com/Faizan-Faisal/umt-hackathon/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	store       *store.Store
	tokens      *TokenStore
	broadcaster events.Broadcaster
	logger      *zap.Logger
}

func NewHandler(st *store.Store, tokens *TokenStore, bc events.Broadcaster, logger *zap.Logger) *Handler {
	return &Handler{
		store:       st,
		tokens:      tokens,
		broadcaster: bc,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/password-reset-request", h.PasswordResetRequest)
		auth.GET("/me", RequireAuth(h.tokens), h.Me)
		auth.PATCH("/switch-role", RequireAuth(h.tokens), h.SwitchRole)
	}

	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.POST("", RequireAuth(h.tokens), h.CreateJob)
		jobs.GET("/my-jobs", RequireAuth(h.tokens), h.MyJobs)
		jobs.GET("/recommended", RequireAuth(h.tokens), h.RecommendedJobs)
	}

	apps := r.Group("/applications", RequireAuth(h.tokens))
	{
		apps.POST("", h.Apply)
		apps.GET("/user/:id", h.UserApplications)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type createJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
}

type applyRequest struct {
	JobID    uint   `json:"job_id" binding:"required"`
	Proposal string `json:"proposal"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *store.User) userResponse {
	return userResponse{
		ID:    strconv.FormatUint(uint64(u.ID), 10),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func toPosting(j store.Job) models.JobPosting {
	return models.JobPosting{
		ID:          int64(j.ID),
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Salary:      j.Salary,
		Description: j.Description,
		Skills:      j.SkillList(),
		Type:        j.Type,
		Status:      j.Status,
		PostedDate:  j.CreatedAt,
	}
}

func toPostings(jobs []store.Job) []models.JobPosting {
	postings := make([]models.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		postings = append(postings, toPosting(j))
	}
	return postings
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.store.UserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	role := req.Role
	if !models.Role(role).Valid() {
		role = string(models.RoleSeeker)
	}

	user := &store.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := h.store.CreateUser(ctx, user); err != nil {
		h.logger.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	token, err := h.tokens.Issue(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": toUserResponse(user)})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	user, err := h.store.UserByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserResponse(user)})
}

// PasswordResetRequest acknowledges identically whether or not the account
// exists, so the endpoint cannot be used to enumerate emails.
func (h *Handler) PasswordResetRequest(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if _, err := h.store.UserByEmail(c.Request.Context(), req.Email); err != nil {
		h.logger.Debug("password reset for unknown email", zap.String("email", req.Email))
	}

	c.JSON(http.StatusOK, gin.H{"message": "If this email exists, a reset link has been sent."})
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) SwitchRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	next := string(models.Role(user.Role).Counterpart())
	if err := h.store.UpdateUserRole(ctx, userID, next); err != nil {
		h.logger.Error("failed to switch role", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "role switch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role switched to " + next})
}

func (h *Handler) CreateJob(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if user.Role != string(models.RoleFinder) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only finders can post jobs"})
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	company := req.Company
	if company == "" {
		company = user.Name
	}

	job := &store.Job{
		CreatedBy:   userID,
		Title:       req.Title,
		Company:     company,
		Location:    req.Location,
		Salary:      req.Salary,
		Description: req.Description,
		Skills:      strings.Join(req.Skills, ","),
		Type:        req.Type,
		Status:      req.Status,
	}
	if err := h.store.CreateJob(ctx, job); err != nil {
		h.logger.Error("failed to create job", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "job creation failed"})
		return
	}

	// Best effort; the posting is already durable.
	event := events.JobEvent{
		EventID:    uuid.NewString(),
		Actor:      strconv.FormatUint(uint64(userID), 10),
		JobID:      strconv.FormatUint(uint64(job.ID), 10),
		Title:      job.Title,
		OccurredAt: time.Now().UTC(),
	}
	if err := h.broadcaster.PublishJobPosted(ctx, event); err != nil {
		h.logger.Warn("failed to publish job event", zap.Error(err))
	}

	c.JSON(http.StatusCreated, toPosting(*job))
}

func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.store.ActiveJobs(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing jobs failed"})
		return
	}
	c.JSON(http.StatusOK, toPostings(jobs))
}

func (h *Handler) MyJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	jobs, err := h.store.JobsByCreator(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to fetch jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching jobs failed"})
		return
	}
	c.JSON(http.StatusOK, toPostings(jobs))
}

func (h *Handler) RecommendedJobs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.UserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	jobs, err := h.store.ActiveJobs(ctx)
	if err != nil {
		h.logger.Error("failed to list jobs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing jobs failed"})
		return
	}

	c.JSON(http.StatusOK, match.Rank(user.SkillList(), toPostings(jobs)))
}

func (h *Handler) Apply(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	applied, err := h.store.HasApplied(ctx, req.JobID, userID)
	if err != nil {
		h.logger.Error("failed to check application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "application failed"})
		return
	}
	if applied {
		c.JSON(http.StatusBadRequest, gin.H{"error": "already applied"})
		return
	}

	app := &store.Application{
		JobID:    req.JobID,
		UserID:   userID,
		Proposal: req.Proposal,
	}
	if err := h.store.CreateApplication(ctx, app); err != nil {
		h.logger.Error("failed to create application", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "application failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "application submitted"})
}

func (h *Handler) UserApplications(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	apps, err := h.store.ApplicationsByUser(c.Request.Context(), uint(id))
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to fetch applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetching applications failed"})
		return
	}
	c.JSON(http.StatusOK, apps)
}
