package main

import (
	"os"

	"github.com/apex/log"
)

// @title        Bio Generator API
// @version      1.0
// @description  구조화된 프로필 정보로 언어 모델 기반 자기소개를 생성하는 API
// @BasePath     /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("bio-generator exited")
		os.Exit(1)
	}
}
