package clawlaunch

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
	localCommon "github.com/fomo4claw/clawlaunch/common"
	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (s *ClawLaunch) runAPI(port string) {
	r := s.engine
	r.Use(localCommon.CORSMiddleware())
	r.Use(localCommon.LimiterMiddleware(600, "M", s.config.IPWhiteList()))
	v1 := r.Group("/")
	{
		v1.POST("/launch/prepare", s.prepareLaunchHandler)
		v1.GET("/launch/scan", localCommon.CronAuthMiddleware(s.cronSecret), s.scanHandler)
		v1.GET("/launch/:tweetId", s.getLaunch)
		v1.GET("/launches", s.getLaunches)
		v1.GET("/info", s.getInfo)
	}

	go localCommon.NewMetricServer()

	if err := r.Run(port); err != nil {
		panic(err)
	}
}

func (s *ClawLaunch) prepareLaunchHandler(c *gin.Context) {
	var req schema.PrepareLaunchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, err.Error())
		return
	}
	if req.TokenDetails == nil {
		if req.AgentAddress != "" {
			errorResponse(c, "agentAddress lookup is no longer supported; submit tokenDetails directly")
			return
		}
		errorResponse(c, "tokenDetails is required")
		return
	}

	details := req.TokenDetails
	if errs := validateLaunchRequest(details); len(errs) > 0 {
		errorResponse(c, strings.Join(errs, "; "))
		return
	}

	if req.ChainID != 0 && req.ChainID != s.chain.ChainID {
		errorResponse(c, "unsupported chain id")
		return
	}
	currency := s.currency
	if req.Currency != "" {
		if !common.IsHexAddress(req.Currency) {
			errorResponse(c, "invalid currency address")
			return
		}
		currency = common.HexToAddress(req.Currency)
	}

	params, saltRes, err := s.prepareLaunch(details, currency, req.DurationBlocks)
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, schema.RespPrepareLaunch{
		LaunchParams:    toRespLaunchParams(params),
		ChainID:         s.chain.ChainID,
		LauncherAddress: s.chain.LiquidityLauncher.Hex(),
		SaltMined:       saltRes.Mined,
		Note:            saltRes.Reason,
	})
}

// validateLaunchRequest applies the same field rules the tweet parser does
// to directly-submitted payloads.
func validateLaunchRequest(req *schema.LaunchRequest) []string {
	errs := make([]string, 0)
	if req.Name == "" || req.Symbol == "" || req.Wallet == "" {
		errs = append(errs, "name, symbol and wallet are required")
		return errs
	}
	if utf8.RuneCountInString(req.Name) > schema.MaxNameLength {
		errs = append(errs, "name too long")
	}
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if utf8.RuneCountInString(req.Symbol) > schema.MaxSymbolLength {
		errs = append(errs, "symbol too long")
	}
	if utf8.RuneCountInString(req.Description) > schema.MaxDescriptionLength {
		errs = append(errs, "description too long")
	}
	if !walletRe.MatchString(req.Wallet) {
		errs = append(errs, "invalid wallet address format")
	} else {
		req.Wallet = strings.ToLower(req.Wallet)
	}
	if req.Image != "" && !isValidImageURL(req.Image) {
		errs = append(errs, "image must be a direct URL to an image file")
	}
	return errs
}

func (s *ClawLaunch) scanHandler(c *gin.Context) {
	if s.twitterCli == nil {
		internalErrorResponse(c, schema.ErrConfiguration.Error())
		return
	}
	resp, err := s.runScan()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *ClawLaunch) getLaunch(c *gin.Context) {
	rec, err := s.wdb.GetLaunch(c.Param("tweetId"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			notFoundResponse(c, schema.ErrNotFound.Error())
			return
		}
		internalErrorResponse(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *ClawLaunch) getLaunches(c *gin.Context) {
	if data, err := s.cache.GetBoard(); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}
	recs, err := s.wdb.GetAllLaunches()
	if err != nil {
		internalErrorResponse(c, err.Error())
		return
	}
	if data, err := json.Marshal(recs); err == nil {
		if err := s.cache.SetBoard(data); err != nil {
			log.Warn("cache board failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, recs)
}

func (s *ClawLaunch) getInfo(c *gin.Context) {
	c.JSON(http.StatusOK, schema.RespInfo{
		ChainID:         s.chain.ChainID,
		LauncherAddress: s.chain.LiquidityLauncher.Hex(),
		BotHandle:       s.botHandle,
	})
}

func errorResponse(c *gin.Context, err string) {
	// client error
	c.JSON(http.StatusBadRequest, schema.RespErr{
		Err: err,
	})
}

func notFoundResponse(c *gin.Context, err string) {
	c.JSON(http.StatusNotFound, schema.RespErr{
		Err: err,
	})
}

func internalErrorResponse(c *gin.Context, err string) {
	c.JSON(http.StatusInternalServerError, schema.RespErr{
		Err: err,
	})
}
