package balancer

import (
	"strconv"

	"github.com/segmentio/kafka-go"
)

type IBaseBalancer interface {
	kafka.Balancer
}

type UserBalancer struct {
	numPartitions int
}

func NewUserBalancer(numPartitions int) IBaseBalancer {
	return &UserBalancer{numPartitions: numPartitions}
}

// 訂單事件以 userID 當 kafka msg key，同一用戶的事件落在同一分區保持順序
func (c *UserBalancer) Balance(msg kafka.Message, partitions ...int) (partition int) {
	userID, err := strconv.Atoi(string(msg.Key))
	if err != nil {
		return 0
	}

	if len(partitions) != 0 {
		return partitions[userID%len(partitions)]
	}
	if c.numPartitions <= 0 {
		return 0
	}

	return userID % c.numPartitions
}
