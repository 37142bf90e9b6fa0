package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openroad/driveschool/internal/api/handlers"
)

type Router struct {
	authHandler    *handlers.AuthHandler
	schoolHandler  *handlers.SchoolHandler
	bookingHandler *handlers.BookingHandler
	driverHandler  *handlers.DriverHandler
	adminHandler   *handlers.AdminHandler
	reviewHandler  *handlers.ReviewHandler
}

func NewRouter(
	authHandler *handlers.AuthHandler,
	schoolHandler *handlers.SchoolHandler,
	bookingHandler *handlers.BookingHandler,
	driverHandler *handlers.DriverHandler,
	adminHandler *handlers.AdminHandler,
	reviewHandler *handlers.ReviewHandler,
) *Router {
	return &Router{
		authHandler:    authHandler,
		schoolHandler:  schoolHandler,
		bookingHandler: bookingHandler,
		driverHandler:  driverHandler,
		adminHandler:   adminHandler,
		reviewHandler:  reviewHandler,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(cors.Default())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
		}

		schools := api.Group("/schools")
		{
			schools.GET("", r.schoolHandler.List)
			schools.GET("/:id", r.schoolHandler.Get)
			schools.GET("/:id/instructors", r.schoolHandler.Instructors)
			schools.GET("/:id/reviews", r.schoolHandler.Reviews)
		}

		api.GET("/instructors/:id/slots", r.schoolHandler.InstructorSlots)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", r.bookingHandler.Create)
			bookings.POST("/driver-flow", r.bookingHandler.CreateDriverFlow)
			bookings.POST("/driver-availability", r.bookingHandler.CreateFromCalendar)
			bookings.POST("/:id/cancel", r.bookingHandler.Cancel)
			bookings.GET("", r.bookingHandler.List)
		}

		api.GET("/users/:id/bookings", r.bookingHandler.ForUser)

		api.POST("/reviews", r.reviewHandler.Create)

		driver := api.Group("/driver")
		{
			driver.GET("/:instructorId/bookings", r.driverHandler.Bookings)
			driver.GET("/:instructorId/bookings/day/:date", r.driverHandler.BookingsForDay)
			driver.GET("/:instructorId/calendar/:month", r.driverHandler.Calendar)
			driver.POST("/bookings/:bookingId/confirm", r.driverHandler.Confirm)
			driver.POST("/bookings/:bookingId/reject", r.driverHandler.Reject)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/schools", r.adminHandler.CreateSchool)
			admin.PUT("/schools/:id", r.adminHandler.UpdateSchool)
			admin.DELETE("/schools/:id", r.adminHandler.DeleteSchool)

			admin.POST("/instructors", r.adminHandler.CreateInstructor)
			admin.DELETE("/instructors/:id", r.adminHandler.DeleteInstructor)

			admin.POST("/slots", r.adminHandler.CreateSlot)
			admin.DELETE("/slots/:id", r.adminHandler.DeleteSlot)

			admin.GET("/bookings", r.adminHandler.Bookings)
			admin.GET("/reviews", r.adminHandler.Reviews)

			drivers := admin.Group("/drivers")
			{
				drivers.POST("/set-unavailable-day", r.adminHandler.SetUnavailableDay)
				drivers.POST("/:instructorId/enable-month", r.adminHandler.EnableMonth)
				drivers.DELETE("/:instructorId/disable-month/:month", r.adminHandler.DisableMonth)
				drivers.POST("/:instructorId/set-unavailable-timeslot", r.adminHandler.SetUnavailableTimeSlot)
				drivers.POST("/:instructorId/set-available-timeslot", r.adminHandler.SetAvailableTimeSlot)
				drivers.GET("/:instructorId/availability", r.adminHandler.Availability)
				drivers.GET("/:instructorId/months", r.adminHandler.Months)
			}
		}
	}
}
