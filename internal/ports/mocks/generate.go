//go:generate mockgen -source=../dispatcher.go        -destination=./mock_dispatcher.go        -package=mocks
//go:generate mockgen -source=../inventory_service.go -destination=./mock_inventory_service.go -package=mocks
//go:generate mockgen -source=../event_publisher.go   -destination=./mock_event_publisher.go   -package=mocks
//go:generate mockgen -source=../logger.go            -destination=./mock_logger.go            -package=mocks
//go:generate mockgen -source=../message_consumer.go  -destination=./mock_message_consumer.go  -package=mocks

package mocks
